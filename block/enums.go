package block

// ChunkType is the type tag stored in a chunk header.
type ChunkType uint16

const (
	ChunkTypeFree ChunkType = iota
	ChunkTypeUsed
	ChunkTypeRun
	ChunkTypeRunData
	ChunkTypeFooter
)

func (t ChunkType) String() string {
	switch t {
	case ChunkTypeFree:
		return "FREE"
	case ChunkTypeUsed:
		return "USED"
	case ChunkTypeRun:
		return "RUN"
	case ChunkTypeRunData:
		return "RUN_DATA"
	case ChunkTypeFooter:
		return "FOOTER"
	default:
		return "UNKNOWN"
	}
}

// ChunkFlags are the bit flags stored alongside a chunk's type.
type ChunkFlags uint16

const (
	// FlagCompactHeader selects the compact (16-byte) allocation header.
	FlagCompactHeader ChunkFlags = 1 << 0
	// FlagHeaderNone selects headerless allocations.
	FlagHeaderNone ChunkFlags = 1 << 1
	// FlagAligned marks a run as requiring aligned user-data placement.
	FlagAligned ChunkFlags = 1 << 2
)

// State is the observable allocation state of a memory block.
type State int

const (
	StateUnknown State = iota
	StateAllocated
	StateFree
)

func (s State) String() string {
	switch s {
	case StateAllocated:
		return "ALLOCATED"
	case StateFree:
		return "FREE"
	default:
		return "UNKNOWN"
	}
}

// HeaderType identifies which allocation-header codec governs a block.
type HeaderType int

const (
	HeaderLegacy HeaderType = iota
	HeaderCompact
	HeaderNone
)

func (h HeaderType) String() string {
	switch h {
	case HeaderLegacy:
		return "LEGACY"
	case HeaderCompact:
		return "COMPACT"
	case HeaderNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// headerTypeFromFlags resolves the header-type selection rule from §4.1:
// COMPACT_HEADER -> COMPACT, HEADER_NONE -> NONE, else LEGACY.
func headerTypeFromFlags(flags ChunkFlags) HeaderType {
	switch {
	case flags&FlagCompactHeader != 0:
		return HeaderCompact
	case flags&FlagHeaderNone != 0:
		return HeaderNone
	default:
		return HeaderLegacy
	}
}

// flagForHeaderType returns the chunk-header flag bit that selects ht, for
// use by ensure_header_type. LEGACY has no dedicated bit (it's the default).
func flagForHeaderType(ht HeaderType) ChunkFlags {
	switch ht {
	case HeaderCompact:
		return FlagCompactHeader
	case HeaderNone:
		return FlagHeaderNone
	default:
		return 0
	}
}

// Kind identifies the block kind (huge chunk or run sub-block).
type Kind int

const (
	KindHuge Kind = iota
	KindRun
)

func (k Kind) String() string {
	switch k {
	case KindHuge:
		return "HUGE"
	case KindRun:
		return "RUN"
	default:
		return "UNKNOWN"
	}
}

// Op is the allocation-state transition a caller asks prep_hdr to prepare.
type Op int

const (
	OpAllocate Op = iota
	OpFree
)
