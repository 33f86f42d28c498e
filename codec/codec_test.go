package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BabisK/snmpcodec/codec"
	"github.com/BabisK/snmpcodec/mib"
)

func lookup(t *testing.T, name string) codec.Codec {
	t.Helper()
	reg := codec.DefaultRegistry()
	c, ok := reg[name]
	require.True(t, ok, "registry missing %s", name)
	cc, ok := c.(codec.Codec)
	require.True(t, ok, "%s codec does not implement codec.Codec", name)
	return cc
}

func TestIntegerCodec_Decode(t *testing.T) {
	c := lookup(t, "INTEGER")
	v, err := c.Decode([]int64{42})
	require.NoError(t, err)
	require.Equal(t, mib.NewIntegerValue(42), v)

	_, err = c.Decode([]int64{1, 2})
	require.Error(t, err)

	_, ok := c.DescribeConstraint()
	require.False(t, ok, "INTEGER codec should have no implicit constraint")
}

func TestUnsignedCodec_AliasesShareBehavior(t *testing.T) {
	for _, name := range []string{"Unsigned32", "Counter32", "Counter", "Gauge32", "Gauge"} {
		c := lookup(t, name)
		v, err := c.Decode([]int64{7})
		require.NoError(t, err)
		require.Equal(t, mib.NewIntegerValue(7), v)
	}
}

func TestIpAddressCodec(t *testing.T) {
	c := lookup(t, "IpAddress")
	constraint, ok := c.DescribeConstraint()
	require.True(t, ok)
	require.True(t, constraint.IsSize)
	require.True(t, constraint.Contains(4))
	require.False(t, constraint.Contains(5))

	v, err := c.Decode([]int64{192, 168, 1, 1})
	require.NoError(t, err)
	require.Equal(t, mib.StringValue("192.168.1.1"), v)

	_, err = c.Decode([]int64{1, 2, 3})
	require.Error(t, err)
}

func TestOctetStringCodec_ImplicitConstraint(t *testing.T) {
	c := lookup(t, "OctetString")
	constraint, ok := c.DescribeConstraint()
	require.True(t, ok)
	require.True(t, constraint.IsSize)
	require.True(t, constraint.Contains(0))
	require.True(t, constraint.Contains(128))

	v, err := c.Decode([]int64{72, 105})
	require.NoError(t, err)
	require.Equal(t, mib.StringValue("Hi"), v)
}

func TestObjectIdentifierCodec(t *testing.T) {
	c := lookup(t, "ObjectIdentifier")
	v, err := c.Decode([]int64{1, 3, 6, 1})
	require.NoError(t, err)
	oidVal, ok := v.(mib.OidPathValue)
	require.True(t, ok)
	require.Len(t, oidVal.Path, 4)
}

func TestNullCodec(t *testing.T) {
	c := lookup(t, "Null")
	constraint, ok := c.DescribeConstraint()
	require.True(t, ok)
	require.True(t, constraint.Contains(0))
	require.False(t, constraint.Contains(1))

	v, err := c.Decode(nil)
	require.NoError(t, err)
	require.Equal(t, mib.StringValue(""), v)

	_, err = c.Decode([]int64{1})
	require.Error(t, err)
}

func TestCounter64Codec(t *testing.T) {
	c := lookup(t, "Counter64")
	v, err := c.Decode([]int64{9223372036854775807})
	require.NoError(t, err)
	require.Equal(t, mib.NewIntegerValue(9223372036854775807), v)
}
