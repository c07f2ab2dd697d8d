package hwio

// 16-bit operations
func GetBit16(v uint16, n uint) bool {
	return GetBiti16(v, n) != 0
}

func GetBiti16(v uint16, n uint) uint16 {
	return v >> n & 0x01
}

func SetBit16(v *uint16, n uint) {
	*v |= 1 << n
}

func ClearBit16(v *uint16, n uint) {
	*v &^= 1 << n
}

func ChangeBit16(v *uint16, n uint, set bool) {
	if set {
		SetBit16(v, n)
	} else {
		ClearBit16(v, n)
	}
}

// GetBits16 extracts the field of width bits starting at bit lo.
func GetBits16(v uint16, lo, width uint) uint16 {
	return v >> lo & (1<<width - 1)
}

// SetBits16 replaces the field of width bits starting at bit lo with f.
func SetBits16(v *uint16, lo, width uint, f uint16) {
	mask := uint16(1<<width-1) << lo
	*v = *v&^mask | f<<lo&mask
}
