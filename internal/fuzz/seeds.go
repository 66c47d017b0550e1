package fuzztests

import "testing"

const maxFuzzInput = 4 << 10

var exprSeeds = []string{
	"",
	"1",
	"2+3",
	"2 * (3 + 4)",
	"6 * (52 + 3) * 4",
	"7 / (2 - 2)",
	"1 + (2",
	"1 + 2)",
	"((((1))))",
	"-3",
	"3 $ 4",
	"1 / 3 * 3",
	"123456789012345678901234567890 * 98765432109876543210",
	"\t1\n+\r2\v",
}

func addSeeds(f *testing.F) {
	for _, s := range exprSeeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
