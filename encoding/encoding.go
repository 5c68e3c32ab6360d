// Package encoding wraps around the various encoding stuff in
// golang.org/x/text/encoding, so the rest of the library never touches the
// x/text package names directly. XML documents declare their charset in the
// declaration; ReaderFor turns that label into a UTF-8 reader.
package encoding

import (
	"fmt"
	"io"
	"strings"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Load resolves a charset label to its encoding. Labels are matched case
// insensitively with hyphens and underscores ignored, so "UTF-8", "utf8"
// and "Utf_8" all resolve the same way. Unknown labels yield nil.
func Load(name string) enc.Encoding {
	normalized := strings.ToLower(name)
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")
	switch normalized {
	case "utf8", "usascii", "ascii":
		return unicode.UTF8
	case "utf16", "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case "eucjp":
		return japanese.EUCJP
	case "shiftjis", "sjis", "cp932":
		return japanese.ShiftJIS
	case "jis", "iso2022jp":
		return japanese.ISO2022JP
	case "big5":
		return traditionalchinese.Big5
	case "euckr":
		return korean.EUCKR
	case "gbk":
		return simplifiedchinese.GBK
	case "gb18030":
		return simplifiedchinese.GB18030
	case "hzgb2312":
		return simplifiedchinese.HZGB2312
	case "iso88591", "latin1", "windows1252", "cp1252":
		return charmap.Windows1252
	case "iso88592":
		return charmap.ISO8859_2
	case "iso88593":
		return charmap.ISO8859_3
	case "iso88594":
		return charmap.ISO8859_4
	case "iso88595":
		return charmap.ISO8859_5
	case "iso88596":
		return charmap.ISO8859_6
	case "iso88597":
		return charmap.ISO8859_7
	case "iso88598":
		return charmap.ISO8859_8
	case "iso885910":
		return charmap.ISO8859_10
	case "iso885913":
		return charmap.ISO8859_13
	case "iso885914":
		return charmap.ISO8859_14
	case "iso885915", "latin9":
		return charmap.ISO8859_15
	case "iso885916":
		return charmap.ISO8859_16
	case "koi8r":
		return charmap.KOI8R
	case "koi8u":
		return charmap.KOI8U
	case "macintosh":
		return charmap.Macintosh
	case "windows1250", "cp1250":
		return charmap.Windows1250
	case "windows1251", "cp1251":
		return charmap.Windows1251
	case "windows1253", "cp1253":
		return charmap.Windows1253
	case "windows1254", "cp1254":
		return charmap.Windows1254
	case "windows1255", "cp1255":
		return charmap.Windows1255
	case "windows1256", "cp1256":
		return charmap.Windows1256
	case "windows1257", "cp1257":
		return charmap.Windows1257
	case "windows1258", "cp1258":
		return charmap.Windows1258
	case "windows874", "cp874":
		return charmap.Windows874
	case "cp437":
		return charmap.CodePage437
	case "cp866":
		return charmap.CodePage866
	}
	return nil
}

// ReaderFor wraps input so that reads yield UTF-8, decoding from the named
// charset. An unknown charset is an error rather than a silent passthrough.
func ReaderFor(charset string, input io.Reader) (io.Reader, error) {
	e := Load(charset)
	if e == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return transform.NewReader(input, e.NewDecoder()), nil
}
