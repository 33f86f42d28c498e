// Package codec is a reference implementation of the primitive-codec
// capability table the index resolver depends on. It is not part of the
// frozen core — [index.Registry] accepts any implementation of
// [index.Codec] — but it ships a default [Registry] covering every SMI
// base type, so the index resolver can be exercised end to end without a
// caller having to write its own.
//
// Wire-type tagging follows gosnmp's Asn1BER constants, the same
// convention an SNMP collector's decoder package would use to label
// decoded values.
package codec

import (
	"fmt"
	"net"

	"github.com/gosnmp/gosnmp"

	"github.com/BabisK/snmpcodec/index"
	"github.com/BabisK/snmpcodec/mib"
)

// Codec decodes an already-extracted OID content fragment into a value and
// optionally supplies a fallback Constraint. Satisfies
// [github.com/BabisK/snmpcodec/index.Codec].
type Codec interface {
	WireType() gosnmp.Asn1BER
	Decode(content []int64) (mib.Value, error)
	DescribeConstraint() (*mib.Constraint, bool)
}

type primitive struct {
	wire       gosnmp.Asn1BER
	constraint *mib.Constraint
	decode     func([]int64) (mib.Value, error)
}

func (p primitive) WireType() gosnmp.Asn1BER { return p.wire }
func (p primitive) Decode(content []int64) (mib.Value, error) {
	return p.decode(content)
}
func (p primitive) DescribeConstraint() (*mib.Constraint, bool) {
	if p.constraint == nil {
		return nil, false
	}
	return p.constraint, true
}

// implicitOctets is the fallback Constraint given to variable-length
// octet-oriented primitives with no declared SIZE clause: a runtime length
// octet followed by that many sub-identifiers, capped at the largest
// sub-identifier count a 128-octet SNMP instance identifier can carry.
func implicitOctets() *mib.Constraint {
	return mib.NewConstraint(true, []mib.Element{{Lo: 0, Hi: 128}})
}

func fixedSize(n int64) *mib.Constraint {
	return mib.NewConstraint(true, []mib.Element{{Lo: n, Hi: n}})
}

func single(content []int64) (int64, error) {
	if len(content) != 1 {
		return 0, fmt.Errorf("expected exactly 1 sub-identifier, got %d", len(content))
	}
	return content[0], nil
}

func toOctets(content []int64) ([]byte, error) {
	b := make([]byte, len(content))
	for i, v := range content {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("sub-identifier %d out of octet range", v)
		}
		b[i] = byte(v)
	}
	return b, nil
}

var (
	integerCodec = primitive{
		wire: gosnmp.Integer,
		decode: func(content []int64) (mib.Value, error) {
			v, err := single(content)
			if err != nil {
				return nil, err
			}
			return mib.NewIntegerValue(v), nil
		},
	}
	unsignedCodec = primitive{
		wire: gosnmp.Gauge32,
		decode: func(content []int64) (mib.Value, error) {
			v, err := single(content)
			if err != nil {
				return nil, err
			}
			return mib.NewIntegerValue(v), nil
		},
	}
	counter64Codec = primitive{
		wire: gosnmp.Counter64,
		decode: func(content []int64) (mib.Value, error) {
			v, err := single(content)
			if err != nil {
				return nil, err
			}
			return mib.NewIntegerValue(v), nil
		},
	}
	ipAddressCodec = primitive{
		wire:       gosnmp.IPAddress,
		constraint: fixedSize(4),
		decode: func(content []int64) (mib.Value, error) {
			octets, err := toOctets(content)
			if err != nil {
				return nil, err
			}
			if len(octets) != 4 {
				return nil, fmt.Errorf("IpAddress requires 4 octets, got %d", len(octets))
			}
			return mib.StringValue(net.IPv4(octets[0], octets[1], octets[2], octets[3]).String()), nil
		},
	}
	octetStringCodec = primitive{
		wire:       gosnmp.OctetString,
		constraint: implicitOctets(),
		decode: func(content []int64) (mib.Value, error) {
			octets, err := toOctets(content)
			if err != nil {
				return nil, err
			}
			return mib.StringValue(octets), nil
		},
	}
	bitStringCodec = primitive{
		wire:       gosnmp.BitString,
		constraint: implicitOctets(),
		decode: func(content []int64) (mib.Value, error) {
			octets, err := toOctets(content)
			if err != nil {
				return nil, err
			}
			return mib.StringValue(octets), nil
		},
	}
	objectIdentifierCodec = primitive{
		wire:       gosnmp.ObjectIdentifier,
		constraint: implicitOctets(),
		decode: func(content []int64) (mib.Value, error) {
			path := make(mib.OidPath, len(content))
			for i, v := range content {
				if v < 0 {
					return nil, fmt.Errorf("negative OID arc %d", v)
				}
				path[i] = mib.NumberComponent(uint32(v))
			}
			return mib.OidPathValue{Path: path}, nil
		},
	}
	opaqueCodec = primitive{
		wire:       gosnmp.Opaque,
		constraint: implicitOctets(),
		decode: func(content []int64) (mib.Value, error) {
			octets, err := toOctets(content)
			if err != nil {
				return nil, err
			}
			return mib.StringValue(octets), nil
		},
	}
	timeTicksCodec = primitive{
		wire: gosnmp.TimeTicks,
		decode: func(content []int64) (mib.Value, error) {
			v, err := single(content)
			if err != nil {
				return nil, err
			}
			return mib.NewIntegerValue(v), nil
		},
	}
	nullCodec = primitive{
		wire:       gosnmp.Null,
		constraint: mib.NewConstraint(true, []mib.Element{{Lo: 0, Hi: 0}}),
		decode: func(content []int64) (mib.Value, error) {
			if len(content) != 0 {
				return nil, fmt.Errorf("NULL index carries no content, got %d element(s)", len(content))
			}
			return mib.StringValue(""), nil
		},
	}
)

// Registry maps an SMI base type name to its Codec. Registry is an alias
// for [index.Registry]: every value stored
// here is a concrete primitive that also implements the narrower
// index.Codec contract (Decode + DescribeConstraint), so a Registry can be
// handed straight to [index.New] with no adapter.
type Registry = index.Registry

// DefaultRegistry returns a Registry covering every base type §6 names:
// INTEGER, Unsigned32, Counter32, Counter64, Gauge32, IpAddress,
// OctetString, BitString, ObjectIdentifier, Opaque, TimeTicks, Null.
// Integer32 and Counter are accepted as SMIv1-compatible aliases.
func DefaultRegistry() Registry {
	return Registry{
		"INTEGER":          integerCodec,
		"Integer32":        integerCodec,
		"Unsigned32":       unsignedCodec,
		"Counter32":        unsignedCodec,
		"Counter":          unsignedCodec,
		"Gauge32":          unsignedCodec,
		"Gauge":            unsignedCodec,
		"Counter64":        counter64Codec,
		"TimeTicks":        timeTicksCodec,
		"IpAddress":        ipAddressCodec,
		"NetworkAddress":   ipAddressCodec,
		"OctetString":      octetStringCodec,
		"BitString":        bitStringCodec,
		"ObjectIdentifier": objectIdentifierCodec,
		"Opaque":           opaqueCodec,
		"Null":             nullCodec,
	}
}
