package crunch

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

// controlCharacter is the CREATE2 domain-separation byte prepended to the
// preimage, per EIP-1014.
const controlCharacter = 0xff

// maxNonce bounds the 6-byte incrementing segment of the salt.
const maxNonce = 0xffffffffffff

// Create2Address derives the deployment address for the given deployer, salt
// and init code hash: keccak256(0xff ++ deployer ++ salt ++ hash)[12:].
func Create2Address(deployer [20]byte, salt [32]byte, initCodeHash [32]byte) [20]byte {
	var msg [85]byte
	msg[0] = controlCharacter
	copy(msg[1:21], deployer[:])
	copy(msg[21:53], salt[:])
	copy(msg[53:], initCodeHash[:])

	h := sha3.NewLegacyKeccak256()
	h.Write(msg[:])

	var addr [20]byte
	copy(addr[:], h.Sum(nil)[12:])
	return addr
}

// deriver computes addresses for successive nonces without reallocating. The
// 85-byte preimage is laid out once per run segment; only the 6 nonce bytes
// change between hashes.
//
// Preimage layout:
//
//	[0]     0xff
//	[1:21]  factory address
//	[21:41] caller address
//	[41:47] random run segment
//	[47:53] nonce segment (little-endian)
//	[53:85] init code hash
type deriver struct {
	msg    [85]byte
	digest hash.Hash
	sum    [32]byte
}

func newDeriver(cfg *Config, segment [6]byte) *deriver {
	d := &deriver{digest: sha3.NewLegacyKeccak256()}
	d.msg[0] = controlCharacter
	copy(d.msg[1:21], cfg.FactoryAddress[:])
	copy(d.msg[21:41], cfg.CallingAddress[:])
	copy(d.msg[41:47], segment[:])
	copy(d.msg[53:], cfg.InitCodeHash[:])
	return d
}

// address computes the CREATE2 address for the given nonce. Only the low 48
// bits of the nonce are significant.
func (d *deriver) address(nonce uint64) [20]byte {
	var le [8]byte
	binary.LittleEndian.PutUint64(le[:], nonce)
	copy(d.msg[47:53], le[:6])

	d.digest.Reset()
	d.digest.Write(d.msg[:])
	d.digest.Sum(d.sum[:0])

	var addr [20]byte
	copy(addr[:], d.sum[12:])
	return addr
}

// salt returns the full 32-byte salt that produced the last derived address:
// the caller address, the random run segment and the nonce segment. This is
// exactly the salt the factory must be handed to reproduce the address.
func (d *deriver) salt() [32]byte {
	var s [32]byte
	copy(s[:], d.msg[21:53])
	return s
}
