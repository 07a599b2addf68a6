package types

// FilterApplyType controls whether a filter change re-runs over buffered data.
type FilterApplyType string

const (
	ApplyToNewOnly        FilterApplyType = "new_only"
	ApplyToBufferedAndNew FilterApplyType = "buffered_and_new"
)

// EnterKeyBehaviour selects the bytes sent when Enter is pressed.
type EnterKeyBehaviour string

const (
	EnterCR   EnterKeyBehaviour = "cr"
	EnterLF   EnterKeyBehaviour = "lf"
	EnterCRLF EnterKeyBehaviour = "crlf"
)

// TxSendMode controls when typed characters leave the TX buffer.
type TxSendMode string

const (
	SendImmediately TxSendMode = "immediate"
	SendOnEnter     TxSendMode = "on_enter"
)

// Encoding names the character set used to decode received bytes.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "iso-8859-1"
	EncodingCP437  Encoding = "cp437"
	EncodingASCII  Encoding = "ascii"
)

// IsValidApplyType reports whether t is a known apply type.
func IsValidApplyType(t FilterApplyType) bool {
	return t == ApplyToNewOnly || t == ApplyToBufferedAndNew
}

// IsValidEnterKey reports whether b is a known enter behaviour.
func IsValidEnterKey(b EnterKeyBehaviour) bool {
	switch b {
	case EnterCR, EnterLF, EnterCRLF:
		return true
	}
	return false
}

// IsValidSendMode reports whether m is a known send mode.
func IsValidSendMode(m TxSendMode) bool {
	return m == SendImmediately || m == SendOnEnter
}

// Encodings lists every supported encoding.
var Encodings = []Encoding{EncodingUTF8, EncodingLatin1, EncodingCP437, EncodingASCII}

// IsValidEncoding reports whether e is a supported encoding.
func IsValidEncoding(e Encoding) bool {
	for _, known := range Encodings {
		if e == known {
			return true
		}
	}
	return false
}
