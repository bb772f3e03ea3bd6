package spftool

import (
	"github.com/tinylib/msgp/msgp"
)

var (
	_ msgp.Marshaler   = (*Report)(nil)
	_ msgp.Unmarshaler = (*Report)(nil)
	_ msgp.Sizer       = (*Report)(nil)
)

const reportFields = 13

// MarshalMsg implements msgp.Marshaler.
func (z *Report) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendMapHeader(o, reportFields)
	o = msgp.AppendString(o, "domain")
	o = msgp.AppendString(o, z.Domain)
	o = msgp.AppendString(o, "organizational_domain")
	o = msgp.AppendString(o, z.OrganizationalDomain)
	o = msgp.AppendString(o, "session_id")
	o = msgp.AppendString(o, z.SessionID)
	o = msgp.AppendString(o, "kind")
	o = msgp.AppendString(o, z.Kind)
	o = msgp.AppendString(o, "message")
	o = msgp.AppendString(o, z.Message)
	o = msgp.AppendString(o, "record")
	o = msgp.AppendString(o, z.Record)
	o = msgp.AppendString(o, "failed_domain")
	o = msgp.AppendString(o, z.FailedDomain)
	o = msgp.AppendString(o, "flattened")
	o = msgp.AppendBool(o, z.Flattened)
	o = msgp.AppendString(o, "recursion_limit")
	o = msgp.AppendInt(o, z.RecursionLimit)
	o = msgp.AppendString(o, "lookups")
	o = msgp.AppendInt(o, z.Lookups)
	o = msgp.AppendString(o, "visited")
	o = appendStrings(o, z.Visited)
	o = msgp.AppendString(o, "warning")
	o = msgp.AppendString(o, z.Warning)
	o = msgp.AppendString(o, "notes")
	o = appendStrings(o, z.Notes)
	return o, nil
}

// UnmarshalMsg implements msgp.Unmarshaler. Unknown keys are skipped.
func (z *Report) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	var n uint32
	n, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for n > 0 {
		n--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		key := msgp.UnsafeString(field)
		switch key {
		case "domain":
			z.Domain, bts, err = msgp.ReadStringBytes(bts)
		case "organizational_domain":
			z.OrganizationalDomain, bts, err = msgp.ReadStringBytes(bts)
		case "session_id":
			z.SessionID, bts, err = msgp.ReadStringBytes(bts)
		case "kind":
			z.Kind, bts, err = msgp.ReadStringBytes(bts)
		case "message":
			z.Message, bts, err = msgp.ReadStringBytes(bts)
		case "record":
			z.Record, bts, err = msgp.ReadStringBytes(bts)
		case "failed_domain":
			z.FailedDomain, bts, err = msgp.ReadStringBytes(bts)
		case "flattened":
			z.Flattened, bts, err = msgp.ReadBoolBytes(bts)
		case "recursion_limit":
			z.RecursionLimit, bts, err = msgp.ReadIntBytes(bts)
		case "lookups":
			z.Lookups, bts, err = msgp.ReadIntBytes(bts)
		case "visited":
			z.Visited, bts, err = readStrings(bts)
		case "warning":
			z.Warning, bts, err = msgp.ReadStringBytes(bts)
		case "notes":
			z.Notes, bts, err = readStrings(bts)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			err = msgp.WrapError(err, key)
			return
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by
// the serialized message.
func (z *Report) Msgsize() (s int) {
	s = msgp.MapHeaderSize
	s += msgp.StringPrefixSize + len("domain") + msgp.StringPrefixSize + len(z.Domain)
	s += msgp.StringPrefixSize + len("organizational_domain") + msgp.StringPrefixSize + len(z.OrganizationalDomain)
	s += msgp.StringPrefixSize + len("session_id") + msgp.StringPrefixSize + len(z.SessionID)
	s += msgp.StringPrefixSize + len("kind") + msgp.StringPrefixSize + len(z.Kind)
	s += msgp.StringPrefixSize + len("message") + msgp.StringPrefixSize + len(z.Message)
	s += msgp.StringPrefixSize + len("record") + msgp.StringPrefixSize + len(z.Record)
	s += msgp.StringPrefixSize + len("failed_domain") + msgp.StringPrefixSize + len(z.FailedDomain)
	s += msgp.StringPrefixSize + len("flattened") + msgp.BoolSize
	s += msgp.StringPrefixSize + len("recursion_limit") + msgp.IntSize
	s += msgp.StringPrefixSize + len("lookups") + msgp.IntSize
	s += msgp.StringPrefixSize + len("visited") + stringsSize(z.Visited)
	s += msgp.StringPrefixSize + len("warning") + msgp.StringPrefixSize + len(z.Warning)
	s += msgp.StringPrefixSize + len("notes") + stringsSize(z.Notes)
	return
}

func appendStrings(b []byte, ss []string) []byte {
	b = msgp.AppendArrayHeader(b, uint32(len(ss)))
	for _, s := range ss {
		b = msgp.AppendString(b, s)
	}
	return b
}

// readStrings decodes a string array. An empty array decodes to nil.
func readStrings(bts []byte) ([]string, []byte, error) {
	n, bts, err := msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return nil, bts, err
	}
	if n == 0 {
		return nil, bts, nil
	}
	ss := make([]string, n)
	for i := range ss {
		ss[i], bts, err = msgp.ReadStringBytes(bts)
		if err != nil {
			return nil, bts, msgp.WrapError(err, i)
		}
	}
	return ss, bts, nil
}

func stringsSize(ss []string) int {
	s := msgp.ArrayHeaderSize
	for _, v := range ss {
		s += msgp.StringPrefixSize + len(v)
	}
	return s
}
