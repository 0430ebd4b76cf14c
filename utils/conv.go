package utils

// FloatArray64to32 narrows a float64 slice, e.g. for glTF output
// which stores single precision.
func FloatArray64to32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// FloatArray32to64 widens a float32 slice.
func FloatArray32to64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
