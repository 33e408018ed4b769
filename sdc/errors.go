package sdc

// ESldError is the legacy-compatible error family returned by the
// resource-access paths (GetResource, Open, ...). It is a flat, stable set
// of integer codes — not a wrapped error chain — matching the original
// container format's own error taxonomy, which external callers already
// depend on.
type ESldError int32

const (
	ErrOK ESldError = iota
	ErrMemoryNullPointer
	ErrMemoryNotEnoughMemory
	ErrResourceCantOpenContainer
	ErrResourceCantGetResource
	ErrCommonTooHighDictionaryVersion
)

func (e ESldError) Error() string {
	switch e {
	case ErrOK:
		return "ok"
	case ErrMemoryNullPointer:
		return "sdc: null pointer"
	case ErrMemoryNotEnoughMemory:
		return "sdc: not enough memory"
	case ErrResourceCantOpenContainer:
		return "sdc: can't open container"
	case ErrResourceCantGetResource:
		return "sdc: can't get resource"
	case ErrCommonTooHighDictionaryVersion:
		return "sdc: dictionary version too high"
	default:
		return "sdc: unknown error"
	}
}

// IsOK reports whether e indicates success.
func (e ESldError) IsOK() bool { return e == ErrOK }

// SDCError is the second error family, used by check_data, the property
// sidecar, and the static FileCRC entry point. It is distinct from
// ESldError for the same reason the original format kept two families: the
// two surfaces were never unified, and callers key off specific constants
// from each.
type SDCError int32

const (
	SDCOK SDCError = iota
	SDCMemNullPointer
	SDCMemNotEnoughMemory
	SDCReadNotOpened
	SDCReadCantRead
	SDCReadWrongFileSize
	SDCReadWrongCRC
	SDCReadWrongPropertyIndex
)

func (e SDCError) Error() string {
	switch e {
	case SDCOK:
		return "ok"
	case SDCMemNullPointer:
		return "sdc: null pointer"
	case SDCMemNotEnoughMemory:
		return "sdc: not enough memory"
	case SDCReadNotOpened:
		return "sdc: reader not opened"
	case SDCReadCantRead:
		return "sdc: can't read"
	case SDCReadWrongFileSize:
		return "sdc: wrong file size"
	case SDCReadWrongCRC:
		return "sdc: wrong crc"
	case SDCReadWrongPropertyIndex:
		return "sdc: wrong property index"
	default:
		return "sdc: unknown error"
	}
}

// IsOK reports whether e indicates success.
func (e SDCError) IsOK() bool { return e == SDCOK }
