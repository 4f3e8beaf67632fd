package shapes

import "fmt"

// Decode decodes a Google encoded polyline string into an ordered list
// of [lng, lat] pairs (GeoJSON axis order). Each coordinate is a signed
// variable-length delta from the previous point: 5-bit groups biased by
// 63, continuation bit 0x20, zig-zag sign in the low bit, 1e-5 units.
func Decode(encoded string) ([][2]float64, error) {
	var coords [][2]float64
	var lat, lng int64

	for i := 0; i < len(encoded); {
		dLat, next, err := decodeSigned(encoded, i)
		if err != nil {
			return nil, err
		}
		dLng, after, err := decodeSigned(encoded, next)
		if err != nil {
			return nil, err
		}
		lat += dLat
		lng += dLng
		coords = append(coords, [2]float64{float64(lng) / 1e5, float64(lat) / 1e5})
		i = after
	}
	return coords, nil
}

// decodeSigned unpacks one variable-length signed integer starting at
// index i, returning the value and the index just past it.
func decodeSigned(encoded string, i int) (int64, int, error) {
	var result int64
	var shift uint
	for {
		if i >= len(encoded) {
			return 0, i, fmt.Errorf("truncated polyline at byte %d", i)
		}
		b := int64(encoded[i]) - 63
		if b < 0 {
			return 0, i, fmt.Errorf("invalid polyline byte %q at %d", encoded[i], i)
		}
		i++
		result |= (b & 0x1F) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), i, nil
	}
	return result >> 1, i, nil
}
