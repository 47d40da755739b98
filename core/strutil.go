package core

// Itoa converts an integer to a string without using the fmt package.
// This is a lightweight alternative for embedded systems.
func Itoa(n int64) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Add space for negative sign
	if negative {
		digits++
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	if negative {
		buf[0] = '-'
	}

	return string(buf)
}

// Utoa converts an unsigned integer to a string.
func Utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}

// Ftoa converts a float to fixed-point decimal notation with prec digits
// after the point, rounding half away from zero. Exponent notation is
// never produced.
func Ftoa(f float64, prec int) string {
	if f != f {
		return "NaN"
	}

	negative := f < 0
	if negative {
		f = -f
	}

	scale := int64(1)
	for i := 0; i < prec; i++ {
		scale *= 10
	}

	n := int64(f*float64(scale) + 0.5)
	s := Itoa(n / scale)

	if prec > 0 {
		frac := Itoa(n % scale)
		for len(frac) < prec {
			frac = "0" + frac
		}
		s += "." + frac
	}

	if negative && n != 0 {
		s = "-" + s
	}
	return s
}

// Atoi parses an unsigned decimal string. ok is false when s is empty,
// contains a non-digit, or overflows the guard range.
func Atoi(s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return 0, false
		}
	}
	return n, true
}
