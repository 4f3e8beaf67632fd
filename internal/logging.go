package internal

import (
	"log"
	"os"
)

// InitLogging routes the standard logger to stdout with timestamps
// precise enough to order pipeline stages within one run.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
