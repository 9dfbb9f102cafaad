package reconcile

// CodeSpace selects which site code index a line is resolved against.
type CodeSpace string

const (
	// CodeSpaceScoped resolves web lines by new code and manual lines by legacy code.
	CodeSpaceScoped CodeSpace = "scoped"
	// CodeSpaceEither resolves any line by new code, then by legacy code.
	CodeSpaceEither CodeSpace = "either"
)

// SiteIndex is an in-memory lookup over a site table.
type SiteIndex struct {
	records  []SiteRecord
	byNew    map[string]int
	byLegacy map[string]int
	// Duplicates lists codes seen more than once in the same code space.
	// The first record carrying the code wins.
	Duplicates []string
}

// NewSiteIndex builds both code indexes from records.
func NewSiteIndex(records []SiteRecord) *SiteIndex {
	idx := &SiteIndex{
		records:  make([]SiteRecord, 0, len(records)),
		byNew:    make(map[string]int, len(records)),
		byLegacy: make(map[string]int, len(records)),
	}

	for _, rec := range records {
		rec.NewCode = CanonicalCode(rec.NewCode)
		rec.LegacyCode = CanonicalCode(rec.LegacyCode)
		pos := len(idx.records)
		idx.records = append(idx.records, rec)

		if rec.NewCode != "" {
			if _, dup := idx.byNew[rec.NewCode]; dup {
				idx.Duplicates = append(idx.Duplicates, "new:"+rec.NewCode)
			} else {
				idx.byNew[rec.NewCode] = pos
			}
		}
		if rec.LegacyCode != "" {
			if _, dup := idx.byLegacy[rec.LegacyCode]; dup {
				idx.Duplicates = append(idx.Duplicates, "legacy:"+rec.LegacyCode)
			} else {
				idx.byLegacy[rec.LegacyCode] = pos
			}
		}
	}
	return idx
}

// All returns the indexed records in input order.
func (idx *SiteIndex) All() []SiteRecord {
	return append([]SiteRecord(nil), idx.records...)
}

// Len returns the number of records.
func (idx *SiteIndex) Len() int {
	return len(idx.records)
}

// ByNewCode finds a record by new code.
func (idx *SiteIndex) ByNewCode(code string) (SiteRecord, bool) {
	return idx.lookup(idx.byNew, code)
}

// ByLegacyCode finds a record by legacy code.
func (idx *SiteIndex) ByLegacyCode(code string) (SiteRecord, bool) {
	return idx.lookup(idx.byLegacy, code)
}

// ByCode tries the new code index, then the legacy one.
func (idx *SiteIndex) ByCode(code string) (SiteRecord, bool) {
	if rec, ok := idx.ByNewCode(code); ok {
		return rec, true
	}
	return idx.ByLegacyCode(code)
}

// Resolve finds the site of a line with the given origin and code under space.
func (idx *SiteIndex) Resolve(origin Origin, code string, space CodeSpace) (SiteRecord, bool) {
	if space == CodeSpaceEither {
		return idx.ByCode(code)
	}
	switch origin {
	case OriginWeb:
		return idx.ByNewCode(code)
	case OriginManual:
		return idx.ByLegacyCode(code)
	default:
		return SiteRecord{}, false
	}
}

func (idx *SiteIndex) lookup(m map[string]int, code string) (SiteRecord, bool) {
	code = CanonicalCode(code)
	if code == "" {
		return SiteRecord{}, false
	}
	pos, ok := m[code]
	if !ok {
		return SiteRecord{}, false
	}
	return idx.records[pos], true
}
