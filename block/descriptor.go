package block

// FromOffset implements memblock_from_offset_opt: it classifies and
// decomposes a pool-relative offset — the user-data pointer of some
// live or recovered allocation — into a MemoryBlock descriptor.
//
// sizeKnown controls the final step: when true, SizeIdx is derived by
// rounding storedSize up to a whole number of units; when false,
// storedSize is ignored and SizeIdx is left 0 (the caller, or a
// subsequent header read, fills it in).
//
// Offsets landing on a FOOTER chunk, or failing to resolve with a zero
// residual, return ErrBadOffset rather than a descriptor: both indicate
// the caller asked for something that was never a valid allocation
// boundary.
func FromOffset(h Heap, off uint64, sizeKnown bool, storedSize uint64) (*MemoryBlock, error) {
	if off == 0 {
		return nil, ErrBadOffset
	}

	layout := h.Layout()

	zoneID, withinChunkArea, ok := layout.ZoneAndOffset(off)
	if !ok {
		return nil, ErrBadOffset
	}

	chunkID, _ := layout.ChunkAndOffset(withinChunkArea)
	hdr := ReadChunkHeader(h, zoneID, chunkID)

	// RUN_DATA chunks back-reference their run's head; resolve to it so
	// every descriptor the rest of this function builds refers to the
	// chunk that actually carries the run's metadata and bitmap.
	if hdr.Type == ChunkTypeRunData {
		chunkID -= hdr.SizeIdx
		hdr = ReadChunkHeader(h, zoneID, chunkID)
	}
	if hdr.Type == ChunkTypeFooter {
		return nil, ErrBadOffset
	}

	residual := withinChunkArea - uint64(chunkID)*ChunkSize

	headerType := headerTypeFromFlags(hdr.Flags)
	hsz := uint64(headerSizeFor(headerType))
	if residual < hsz {
		return nil, ErrBadOffset
	}
	residual -= hsz

	var kind Kind
	if residual > 0 {
		kind = KindRun
	} else {
		kind = KindHuge
	}

	switch kind {
	case KindHuge:
		if hdr.Type != ChunkTypeUsed && hdr.Type != ChunkTypeFree {
			corrupt("from_offset: zone %d chunk %d classified HUGE but chunk header type is %s", zoneID, chunkID, hdr.Type)
		}
	case KindRun:
		if hdr.Type != ChunkTypeRun {
			corrupt("from_offset: zone %d chunk %d classified RUN but chunk header type is %s", zoneID, chunkID, hdr.Type)
		}
	}

	m := &MemoryBlock{Heap: h, ZoneID: zoneID, ChunkID: chunkID, Kind: kind, HeaderType: headerType}
	unitSize := m.BlockSize()

	if kind == KindRun {
		base := runMetaBase(m)
		padding := runDataStart(m) - base - RunMetaSize
		trim := RunMetaSize + padding
		if residual < trim {
			return nil, ErrBadOffset
		}
		residual -= trim

		blockOff := residual / unitSize
		residual -= blockOff * unitSize
		if residual != 0 {
			return nil, ErrBadOffset
		}
		if blockOff > 0xFFFF {
			return nil, ErrBadOffset
		}
		m.BlockOff = uint16(blockOff)
	} else if residual != 0 {
		return nil, ErrBadOffset
	}

	if sizeKnown {
		m.SizeIdx = uint32((storedSize + unitSize - 1) / unitSize)
	}

	return m, nil
}

// RebuildState populates HeaderType and Kind for a descriptor whose
// persistent location (Heap, ZoneID, ChunkID, BlockOff) was set by
// hand rather than resolved through FromOffset — the path the higher
// allocator uses for a freshly-carved candidate block.
func RebuildState(m *MemoryBlock) {
	hdr := ReadChunkHeader(m.Heap, m.ZoneID, m.ChunkID)
	m.HeaderType = headerTypeFromFlags(hdr.Flags)
	switch hdr.Type {
	case ChunkTypeRun, ChunkTypeRunData:
		m.Kind = KindRun
	default:
		m.Kind = KindHuge
	}
}
