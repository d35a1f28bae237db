package compress

// round mixes one word of the block into the accumulators.
// Even bytes of c go to a, odd bytes go to b through the tables in reverse order.
func round(a, b, c, x, mul uint64) (uint64, uint64, uint64) {
	c ^= x

	a -= sBox[0][byte(c)] ^ sBox[1][byte(c>>16)] ^ sBox[2][byte(c>>32)] ^ sBox[3][byte(c>>48)]
	b += sBox[3][byte(c>>8)] ^ sBox[2][byte(c>>24)] ^ sBox[1][byte(c>>40)] ^ sBox[0][byte(c>>56)]
	b *= mul

	return a, b, c
}

// pass runs a round for each word of the block, rotating the roles of the accumulators.
func pass(a, b, c uint64, x *[8]uint64, mul uint64) (uint64, uint64, uint64) {
	a, b, c = round(a, b, c, x[0], mul)
	b, c, a = round(b, c, a, x[1], mul)
	c, a, b = round(c, a, b, x[2], mul)
	a, b, c = round(a, b, c, x[3], mul)
	b, c, a = round(b, c, a, x[4], mul)
	c, a, b = round(c, a, b, x[5], mul)
	a, b, c = round(a, b, c, x[6], mul)
	b, c, a = round(b, c, a, x[7], mul)

	return a, b, c
}
