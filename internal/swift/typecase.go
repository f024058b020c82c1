package swift

import (
	"strconv"
	"strings"

	"github.com/hanpama/swiftgraph/internal/ir"
)

// recordField is one field applicable to a record, together with the
// qualification needed to reference the field's nested record from the
// enclosing scope.
type recordField struct {
	field *ir.Field

	// conditional marks fields reached through a boolean condition; they
	// surface as optional regardless of their schema type.
	conditional bool

	// structPath qualifies the nested record name when the field was
	// collected through a type condition ("AsDog" for a field selected
	// under "... on Dog").
	structPath string
}

// structName is the possibly qualified name of the nested record compiled
// for a composite field, or "" for leaf fields.
func (rf recordField) structName() string {
	if rf.field.SelectionSet == nil {
		return ""
	}
	name := structNameForPropertyName(rf.field.ResponseKey())
	if rf.structPath != "" {
		return rf.structPath + "." + name
	}
	return name
}

// record groups the possible types of a selection set that share an
// identical applicable field set, so they can share one initializer shape.
type record struct {
	possibleTypes []string
	fields        []recordField
}

// typeCaseForSelectionSet partitions the selection set's possible types into
// records. For each concrete type the applicable fields are the direct
// fields plus the fields of every type condition containing that type;
// types with identical field sets collapse into one record. Records appear
// in first-occurrence order of the selection set's possible types, and the
// union of their possible types equals the selection set's own.
func typeCaseForSelectionSet(ss *ir.SelectionSet) []record {
	var records []record
	index := map[string]int{}
	for _, typeName := range ss.PossibleTypes {
		fields := collectApplicableFields(nil, ss.Selections, typeName, false, "")
		sig := fieldSetSignature(fields)
		if i, ok := index[sig]; ok {
			records[i].possibleTypes = append(records[i].possibleTypes, typeName)
			continue
		}
		index[sig] = len(records)
		records = append(records, record{possibleTypes: []string{typeName}, fields: fields})
	}
	return records
}

func collectApplicableFields(dst []recordField, sels []ir.Selection, typeName string, conditional bool, structPath string) []recordField {
	for _, sel := range sels {
		switch s := sel.(type) {
		case *ir.Field:
			if s.IsTypename() {
				continue
			}
			dst = appendRecordField(dst, recordField{field: s, conditional: conditional, structPath: structPath})
		case *ir.TypeCondition:
			if !containsType(s.SelectionSet.PossibleTypes, typeName) {
				continue
			}
			path := structNameForTypeCondition(s.TypeName)
			if structPath != "" {
				path = structPath + "." + path
			}
			dst = collectApplicableFields(dst, s.SelectionSet.Selections, typeName, conditional, path)
		case *ir.FragmentSpread:
			// The fragment's fields live on its own record; the spread
			// surfaces through the Fragments view instead.
		case *ir.BooleanCondition:
			dst = collectApplicableFields(dst, s.Selections, typeName, true, structPath)
		}
	}
	return dst
}

// appendRecordField keeps the first occurrence of each response key.
func appendRecordField(dst []recordField, rf recordField) []recordField {
	key := rf.field.ResponseKey()
	for _, existing := range dst {
		if existing.field.ResponseKey() == key {
			return dst
		}
	}
	return append(dst, rf)
}

func fieldSetSignature(fields []recordField) string {
	var b strings.Builder
	for _, rf := range fields {
		b.WriteString(rf.field.ResponseKey())
		b.WriteByte(':')
		b.WriteString(rf.structPath)
		b.WriteByte(':')
		b.WriteString(strconv.FormatBool(rf.conditional))
		b.WriteByte(';')
	}
	return b.String()
}

func containsType(possibleTypes []string, typeName string) bool {
	for _, t := range possibleTypes {
		if t == typeName {
			return true
		}
	}
	return false
}

// isTypeSuperset reports whether super contains every type in sub.
func isTypeSuperset(super, sub []string) bool {
	for _, t := range sub {
		if !containsType(super, t) {
			return false
		}
	}
	return true
}
