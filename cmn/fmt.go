package cmn

import (
	"fmt"
	"io"
	"os"
)

/*
	helpers for printing and formatting text.
	Everything writes to an io.Writer so the statement display can be redirected
	(and captured in tests). The package level variants keep the old
	stdout / stderr behaviour.
*/

/*
	applies Ansi formatting to the text and at the end resets it
*/
func FPrintfTrailing(w io.Writer, seq AnsiFlag, format string, args ...interface{}) {
	fmt.Fprintf(w, "%v%s%v", seq, fmt.Sprintf(format, args...), AttrOff)
}

/*
	works the same as FPrintfTrailing, but adds LF before finishing escape sequence
*/
func FPrintflnTrailing(w io.Writer, seq AnsiFlag, format string, args ...interface{}) {
	fmt.Fprintf(w, "%v%s\n%v", seq, fmt.Sprintf(format, args...), AttrOff)
}

const MediumMark string = "✓"

func FPrintflnSuccess(w io.Writer, prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(w, "%s%v%s %s%v\n", prefix, ForeGreen, MediumMark, fmt.Sprintf(_fmt, argv...), AttrOff)
}

func PrintflnSuccess(prefix, _fmt string, argv ...interface{}) {
	FPrintflnSuccess(os.Stderr, prefix, _fmt, argv...)
}

func PrintflnError(_fmt string, argv ...interface{}) {
	FPrintflnTrailing(os.Stderr, ForeRed, _fmt, argv...)
}

func PrintError(err error) {
	PrintflnError("%s", err)
}

const MediumX string = "✕"

func FPrintflnWarn(w io.Writer, prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(w, "%s%v%s %s%v\n", prefix, ForeYellow, MediumX, fmt.Sprintf(_fmt, argv...), AttrOff)
}

func PrintflnWarn(prefix, _fmt string, argv ...interface{}) {
	FPrintflnWarn(os.Stderr, prefix, _fmt, argv...)
}

const MediumBulletPoint string = "•"

func FPrintflnNotify(w io.Writer, prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(w, "%s%v%s%v %s\n", prefix, ForeBlue, MediumBulletPoint, AttrOff, fmt.Sprintf(_fmt, argv...))
}

func PrintflnNotify(prefix, _fmt string, argv ...interface{}) {
	FPrintflnNotify(os.Stdout, prefix, _fmt, argv...)
}

/*
	conditional formatting.
	if fmtdisable == false then formatting provided function fptr will be used
	else raw call is equivalent to calling fmt.printf with additional LF at the end
*/
func CndPrintfln(
	fmtdisable bool,
	fptr func(string, string, ...interface{}),
	prefix, _fmt string, argv ...interface{}) {

	if fmtdisable {
		fmt.Printf("%s%s\n", prefix, fmt.Sprintf(_fmt, argv...))
	} else {
		fptr(prefix, _fmt, argv...)
	}
}

func CndPrintln(
	fmtdisable bool,
	fptr func(string, string, ...interface{}),
	prefix,
	text string) {

	if fmtdisable {
		fmt.Printf("%s%s\n", prefix, text)
	} else {
		fptr(prefix, "%s", text)
	}
}

func CndPrintError(fmtdisable bool, err error) {
	if fmtdisable {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	} else {
		PrintError(err)
	}
}
