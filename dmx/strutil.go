package dmx

// itoa converts an integer to a string without the fmt package, which
// keeps the core usable on TinyGo targets where fmt is too heavy.
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint64(-n))
	}
	return utoa(uint64(n))
}

// utoa converts an unsigned integer to a string.
func utoa(n uint64) string {
	if n == 0 {
		return "0"
	}

	digits := 0
	for temp := n; temp > 0; temp /= 10 {
		digits++
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
