package mapping

// DateRole is the part a date attribute plays in a range.
type DateRole string

const (
	RoleStart DateRole = "start"
	RoleEnd   DateRole = "end"
	RoleWhen  DateRole = "when"
)

// DateAttribute binds an attribute name to its role.
type DateAttribute struct {
	Name string
	Role DateRole
}

// DateAttributeTable is an ordered list of recognized date attributes. When
// several attributes with the same role are present, the later entry wins.
type DateAttributeTable []DateAttribute

// DefaultDateAttributes returns the TEI att.datable attributes.
func DefaultDateAttributes() DateAttributeTable {
	return DateAttributeTable{
		{Name: "notBefore", Role: RoleStart},
		{Name: "notBefore-iso", Role: RoleStart},
		{Name: "from", Role: RoleStart},
		{Name: "from-iso", Role: RoleStart},
		{Name: "notAfter", Role: RoleEnd},
		{Name: "notAfter-iso", Role: RoleEnd},
		{Name: "to", Role: RoleEnd},
		{Name: "to-iso", Role: RoleEnd},
		{Name: "when", Role: RoleWhen},
		{Name: "when-iso", Role: RoleWhen},
	}
}

// Attributes gives access to plain attribute values.
type Attributes interface {
	Attr(name string) (string, bool)
}

// AttributeMap is a literal set of attributes.
type AttributeMap map[string]string

// Attr implements Attributes.
func (m AttributeMap) Attr(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}

// DateRange is a resolved (begin, end) pair. An empty side is unknown.
type DateRange struct {
	Begin string
	End   string
}

// IsZero reports whether neither side is known.
func (r DateRange) IsZero() bool {
	return r.Begin == "" && r.End == ""
}

// ExtractBeginEnd resolves the date range of attrs.
//
// With fillMissing, a single known boundary or a "when" point becomes an
// instant: (start, start), (end, end) or (when, when). Without it, ranges stay
// open: (start, "") and ("", end); a "when" point is still an instant. Both
// modes return (start, end) when both are present and an empty range for any
// other combination.
func ExtractBeginEnd(attrs Attributes, fillMissing bool, table DateAttributeTable) DateRange {
	if table == nil {
		table = DefaultDateAttributes()
	}

	var start, end, when string
	for _, attribute := range table {
		value, ok := attrs.Attr(attribute.Name)
		if !ok || value == "" {
			continue
		}
		switch attribute.Role {
		case RoleStart:
			start = value
		case RoleEnd:
			end = value
		case RoleWhen:
			when = value
		}
	}

	hasStart, hasEnd, hasWhen := start != "", end != "", when != ""
	switch {
	case hasStart && hasEnd:
		return DateRange{Begin: start, End: end}
	case hasStart && !hasWhen:
		if fillMissing {
			return DateRange{Begin: start, End: start}
		}
		return DateRange{Begin: start}
	case hasEnd && !hasStart && !hasWhen:
		if fillMissing {
			return DateRange{Begin: end, End: end}
		}
		return DateRange{End: end}
	case hasWhen && !hasStart && !hasEnd:
		return DateRange{Begin: when, End: when}
	default:
		return DateRange{}
	}
}

// dateRange extracts a range with the mapper's attribute table.
func (m *Mapper) dateRange(attrs Attributes, fillMissing bool) DateRange {
	return ExtractBeginEnd(attrs, fillMissing, m.cfg.DateAttributes)
}
