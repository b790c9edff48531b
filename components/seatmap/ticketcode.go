package seatmap

import (
	"regexp"
	"strings"
)

// TicketAttributes maps semantic ticket attributes (zone, sector, seat, ...)
// to their values.
type TicketAttributes map[string]string

// Clone returns a shallow copy.
func (a TicketAttributes) Clone() TicketAttributes {
	if a == nil {
		return nil
	}
	out := make(TicketAttributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ticketAlphabet is ordered; SerializeIdentifier emits tokens in this order.
var ticketAlphabet = []struct {
	code byte
	attr string
}{
	{'Z', "zone"},
	{'S', "sector"},
	{'B', "block"},
	{'J', "section"},
	{'s', "seat"},
	{'t', "table"},
	{'R', "row"},
	{'r', "room"},
	{'F', "floor"},
	{'P', "price"},
	{'U', "unit"},
	{'D', "date"},
	{'G', "gate"},
	{'E', "entrance"},
}

var (
	codeToAttr = map[byte]string{}
	attrToCode = map[string]byte{}

	ticketGrammar *regexp.Regexp
	vipToken      = regexp.MustCompile(`^V(IP)?`)
)

func init() {
	var letters strings.Builder
	for _, entry := range ticketAlphabet {
		codeToAttr[entry.code] = entry.attr
		attrToCode[entry.attr] = entry.code
		letters.WriteByte(entry.code)
	}
	alphabet := letters.String()
	ticketGrammar = regexp.MustCompile(`^[` + alphabet + `]\w+(?:[-_][` + alphabet + `\w]\w+)*$`)
}

// AttributeFor returns the attribute name for a single-letter code.
func AttributeFor(code byte) (string, bool) {
	attr, ok := codeToAttr[code]
	return attr, ok
}

// CodeFor returns the single-letter code for an attribute name.
func CodeFor(attr string) (byte, bool) {
	code, ok := attrToCode[attr]
	return code, ok
}

// IsTicketIdentifier reports whether id satisfies the ticket grammar.
func IsTicketIdentifier(id string) bool {
	return ticketGrammar.MatchString(id)
}

// ParseIdentifier decodes a ticket identifier into attributes. The boolean is
// false when the identifier does not match the grammar; such elements still
// render, they just cannot be sold.
func ParseIdentifier(id string) (TicketAttributes, bool) {
	if !IsTicketIdentifier(id) {
		return nil, false
	}
	attrs := TicketAttributes{}
	for _, token := range strings.Split(id, "-") {
		if token == "" {
			continue
		}
		attr, value := decodeToken(token)
		attrs[attr] = value
	}
	return attrs, true
}

func decodeToken(token string) (string, string) {
	if attr, ok := codeToAttr[token[0]]; ok {
		return attr, token[1:]
	}
	if vipToken.MatchString(token) {
		return codeToAttr['r'], token
	}
	return codeToAttr['S'], token
}

// SerializeIdentifier encodes attributes back into the compact identifier form.
// Unknown attribute names and empty values are skipped.
func SerializeIdentifier(attrs TicketAttributes) string {
	tokens := make([]string, 0, len(attrs))
	for _, entry := range ticketAlphabet {
		value, ok := attrs[entry.attr]
		if !ok || value == "" {
			continue
		}
		tokens = append(tokens, string(entry.code)+value)
	}
	return strings.Join(tokens, "-")
}
