package zylox

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glycerine/blake2b"
)

// TokenCache keeps scanned token streams on disk, one greenpack
// file per distinct source text, named by the source's hash.
type TokenCache struct {
	Dir string
}

func NewTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("token cache dir '%s': %v", dir, err)
	}
	return &TokenCache{Dir: dir}, nil
}

// Blake2bUint64 returns an 8 byte BLAKE2b cryptographic
// hash of the raw.
func Blake2bUint64(raw []byte) (uint64, error) {
	cfg := &blake2b.Config{Size: 8}
	h, err := blake2b.New(cfg)
	if err != nil {
		return 0, err
	}
	h.Write(raw)
	by := h.Sum(nil)
	return binary.LittleEndian.Uint64(by[:8]), nil
}

func (c *TokenCache) path(src string) (string, error) {
	key, err := Blake2bUint64([]byte(src))
	if err != nil {
		return "", err
	}
	return filepath.Join(c.Dir, fmt.Sprintf("%016x.tok", key)), nil
}

// Get returns ErrCacheMiss when src has not been stored.
func (c *TokenCache) Get(src string) ([]Token, error) {
	fn, err := c.path(src)
	if err != nil {
		return nil, err
	}
	by, err := os.ReadFile(fn)
	if os.IsNotExist(err) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var toks TokenSlice
	if _, err = toks.UnmarshalMsg(by); err != nil {
		return nil, fmt.Errorf("corrupt token cache file '%s': %v", fn, err)
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokenEOF {
		return nil, fmt.Errorf("corrupt token cache file '%s': missing EOF token", fn)
	}
	return toks, nil
}

// Put stores toks under src's hash, replacing any earlier entry.
func (c *TokenCache) Put(src string, toks []Token) error {
	fn, err := c.path(src)
	if err != nil {
		return err
	}
	by, err := TokenSlice(toks).MarshalMsg(nil)
	if err != nil {
		return err
	}
	tmp := fn + ".tmp"
	if err = os.WriteFile(tmp, by, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, fn)
}
