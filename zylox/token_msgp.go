package zylox

import (
	"fmt"

	"github.com/glycerine/greenpack/msgp"
)

// Binary encoding of tokens for the on-disk token cache. Each
// token is a four-entry map; a slice is an array of those.

// MarshalMsg implements msgp.Marshaler
func (z *Token) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendMapHeader(o, 4)
	o = msgp.AppendString(o, "kind")
	o = msgp.AppendInt(o, int(z.Kind))
	o = msgp.AppendString(o, "lexeme")
	o = msgp.AppendString(o, z.Lexeme)
	o = msgp.AppendString(o, "literal")
	o, err = msgp.AppendIntf(o, z.Literal)
	if err != nil {
		return
	}
	o = msgp.AppendString(o, "line")
	o = msgp.AppendInt(o, z.Line)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Token) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var nbs msgp.NilBitsStack
	var field string
	var sz uint32
	sz, bts, err = nbs.ReadMapHeaderBytes(bts)
	if err != nil {
		return
	}
	for sz > 0 {
		sz--
		field, bts, err = nbs.ReadStringBytes(bts)
		if err != nil {
			return
		}
		switch field {
		case "kind":
			var k int
			k, bts, err = nbs.ReadIntBytes(bts)
			if err != nil {
				return
			}
			if k < 0 || k > int(TokenEOF) {
				err = fmt.Errorf("token kind %d out of range", k)
				return
			}
			z.Kind = TokenType(k)
		case "lexeme":
			z.Lexeme, bts, err = nbs.ReadStringBytes(bts)
			if err != nil {
				return
			}
		case "literal":
			z.Literal, bts, err = nbs.ReadIntfBytes(bts)
			if err != nil {
				return
			}
		case "line":
			z.Line, bts, err = nbs.ReadIntBytes(bts)
			if err != nil {
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Token) Msgsize() (s int) {
	s = msgp.MapHeaderSize +
		5 + msgp.IntSize +
		7 + msgp.StringPrefixSize + len(z.Lexeme) +
		8 + msgp.GuessSize(z.Literal) +
		5 + msgp.IntSize
	return
}

type TokenSlice []Token

// MarshalMsg implements msgp.Marshaler
func (z TokenSlice) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendArrayHeader(o, uint32(len(z)))
	for i := range z {
		o, err = z[i].MarshalMsg(o)
		if err != nil {
			return
		}
	}
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *TokenSlice) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var nbs msgp.NilBitsStack
	var sz uint32
	sz, bts, err = nbs.ReadArrayHeaderBytes(bts)
	if err != nil {
		return
	}
	toks := make(TokenSlice, sz)
	for i := range toks {
		bts, err = toks[i].UnmarshalMsg(bts)
		if err != nil {
			return
		}
	}
	*z = toks
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z TokenSlice) Msgsize() (s int) {
	s = msgp.ArrayHeaderSize
	for i := range z {
		s += z[i].Msgsize()
	}
	return
}
