package header

import (
	"testing"

	"github.com/kilnsys/pmemblock/block/sanitizer"
	"github.com/kilnsys/pmemblock/persist"
	"github.com/stretchr/testify/require"
)

func TestLegacyRoundTrip(t *testing.T) {
	m := make([]byte, legacySize)
	c := For(Legacy)
	c.Write(m, 4096, 0xDEADBEEF, 0x0042, persist.NewMmapOps(nil, -1), sanitizer.Noop{})

	require.Equal(t, uint64(4096), c.GetSize(m, 0))
	require.Equal(t, uint64(0xDEADBEEF), c.GetExtra(m))
	require.Equal(t, uint16(0x0042), c.GetFlags(m))
}

func TestCompactRoundTrip(t *testing.T) {
	m := make([]byte, compactSize)
	c := For(Compact)
	c.Write(m, 4096, 0xDEADBEEF, 0x0042, persist.NewMmapOps(nil, -1), sanitizer.Noop{})

	require.Equal(t, uint64(4096), c.GetSize(m, 0))
	require.Equal(t, uint64(0xDEADBEEF), c.GetExtra(m))
	require.Equal(t, uint16(0x0042), c.GetFlags(m))
}

func TestCompactSizeMasking(t *testing.T) {
	m := make([]byte, compactSize)
	c := For(Compact)
	// A size at the edge of the 48-bit field must not bleed into flags.
	const maxSize = Compact48Mask
	c.Write(m, maxSize, 0, 0x1, persist.NewMmapOps(nil, -1), sanitizer.Noop{})

	require.Equal(t, uint64(maxSize), c.GetSize(m, 0))
	require.Equal(t, uint16(0x1), c.GetFlags(m))
}

func TestNoneAlwaysZero(t *testing.T) {
	c := For(None)
	require.Equal(t, 0, c.HeaderSize())
	require.Equal(t, uint64(0), c.GetExtra(nil))
	require.Equal(t, uint16(0), c.GetFlags(nil))
	require.Equal(t, uint64(128), c.GetSize(nil, 128))
}

func TestInvalidateReinitNotifiesObserver(t *testing.T) {
	m := make([]byte, legacySize)
	obs := &recordingObserver{}
	c := For(Legacy)

	c.Invalidate(m, obs)
	require.True(t, obs.noaccess)

	c.Reinit(m, obs)
	require.True(t, obs.defined)
}

type recordingObserver struct {
	sanitizer.Noop
	noaccess  bool
	defined   bool
	undefined bool
	txAdd     bool
	txRemove  bool
}

func (r *recordingObserver) MemNoaccess(_ []byte)  { r.noaccess = true }
func (r *recordingObserver) MemDefined(_ []byte)   { r.defined = true }
func (r *recordingObserver) MemUndefined(_ []byte) { r.undefined = true }
func (r *recordingObserver) TxAdd(_ []byte)        { r.txAdd = true }
func (r *recordingObserver) TxRemove(_ []byte)     { r.txRemove = true }

type recordingOps struct {
	persist.MmapOps
	memcpyCalled bool
	lastFlags    persist.CopyFlag
}

func (r *recordingOps) Memcpy(dst, src []byte, flags persist.CopyFlag) []byte {
	r.memcpyCalled = true
	r.lastFlags = flags
	copy(dst, src)
	return dst
}

func TestLegacyWriteRoutesThroughOpsAndObserver(t *testing.T) {
	m := make([]byte, legacySize)
	obs := &recordingObserver{}
	ops := &recordingOps{}
	c := For(Legacy)

	c.Write(m, 4096, 0xDEADBEEF, 0x0042, ops, obs)

	require.True(t, ops.memcpyCalled)
	require.Equal(t, persist.FlagNonTemporal|persist.FlagNoDrain|persist.FlagRelaxed, ops.lastFlags)
	require.True(t, obs.undefined)
	require.True(t, obs.txAdd)
	require.True(t, obs.txRemove)
	require.True(t, obs.noaccess, "legacy header's unused red zone must go inaccessible after write")

	require.Equal(t, uint64(4096), c.GetSize(m, 0))
	require.Equal(t, uint64(0xDEADBEEF), c.GetExtra(m))
	require.Equal(t, uint16(0x0042), c.GetFlags(m))
}

func TestCompactWriteRoutesThroughOpsAndObserver(t *testing.T) {
	m := make([]byte, compactSize)
	obs := &recordingObserver{}
	ops := &recordingOps{}
	c := For(Compact)

	c.Write(m, 4096, 0xDEADBEEF, 0x0042, ops, obs)

	require.True(t, ops.memcpyCalled)
	require.Equal(t, persist.FlagNonTemporal|persist.FlagNoDrain|persist.FlagRelaxed, ops.lastFlags)
	require.True(t, obs.undefined)
	require.True(t, obs.txAdd)
	require.True(t, obs.txRemove)

	require.Equal(t, uint64(4096), c.GetSize(m, 0))
	require.Equal(t, uint64(0xDEADBEEF), c.GetExtra(m))
	require.Equal(t, uint16(0x0042), c.GetFlags(m))
}
