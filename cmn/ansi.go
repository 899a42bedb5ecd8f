package cmn

import (
	"strconv"
	"strings"
)

/*
	terminal colours for the statement display and cli output.

	fmt.Printf("%vHello World%v\n", cmn.ForeRed, cmn.AttrOff)

	flags compose with |, one byte per attribute, foreground and background:
	[0 | back | fore | attr]
*/
type AnsiFlag uint32

const (
	AttrOff AnsiFlag = iota
	AttrBold
	AttrDim
	_
	AttrUnderscore
)

const (
	ForeBlack AnsiFlag = (iota + 30) << 8
	ForeRed
	ForeGreen
	ForeYellow
	ForeBlue
	ForeMagenta
	ForeCyan
	ForeWhite
)

const (
	BackBlack AnsiFlag = (iota + 40) << 16
	BackRed
	BackGreen
	BackYellow
	BackBlue
	BackMagenta
	BackCyan
	BackWhite
)

func (f AnsiFlag) String() string {
	codes := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		if b := f & 0xFF; b != 0 {
			codes = append(codes, strconv.Itoa(int(b)))
		}
		f >>= 8
	}
	if len(codes) == 0 {
		return "\033[0m"
	}
	return "\033[" + strings.Join(codes, ";") + "m"
}
