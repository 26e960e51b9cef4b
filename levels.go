package columnio

// fieldsMarker tracks which child indexes of the group open at one depth
// have already been written, so nulls can be inserted for the others when
// the group closes.
//
// The bitmap grows to the widest group seen at its depth and is then reused
// for the lifetime of the writer; reset clears it in place.
type fieldsMarker struct {
	bits []uint64
}

func (m *fieldsMarker) reset(fieldsCount int) {
	n := (fieldsCount + 63) / 64
	if cap(m.bits) < n {
		m.bits = make([]uint64, n)
		return
	}
	m.bits = m.bits[:n]
	for i := range m.bits {
		m.bits[i] = 0
	}
}

func (m *fieldsMarker) markWritten(i int) {
	m.bits[uint(i)/64] |= 1 << (uint(i) % 64)
}

func (m *fieldsMarker) isWritten(i int) bool {
	return (m.bits[uint(i)/64] & (1 << (uint(i) % 64))) != 0
}

// levelTracker holds one frame per nesting depth: the repetition level in
// effect at that depth and the fields written so far in the group open at
// that depth.
//
// All frames are allocated once at construction, sized to the maximum depth
// of the schema, and reset in place as groups are opened.
type levelTracker struct {
	repetitionLevels []int8
	fieldsWritten    []fieldsMarker
}

func makeLevelTracker(maxDepth int) levelTracker {
	return levelTracker{
		repetitionLevels: make([]int8, maxDepth),
		fieldsWritten:    make([]fieldsMarker, maxDepth),
	}
}

func (t *levelTracker) enter(depth, fieldsCount int) {
	t.fieldsWritten[depth].reset(fieldsCount)
}

func (t *levelTracker) repetitionLevel(depth int) int8 {
	return t.repetitionLevels[depth]
}

func (t *levelTracker) setRepetitionLevel(depth int, level int8) {
	t.repetitionLevels[depth] = level
}

func (t *levelTracker) markWritten(depth, index int) {
	t.fieldsWritten[depth].markWritten(index)
}

func (t *levelTracker) isWritten(depth, index int) bool {
	return t.fieldsWritten[depth].isWritten(index)
}
