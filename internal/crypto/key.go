package crypto

import (
	"sync"

	"github.com/PolarWolf314/pwmn/internal/hardening"
)

// KeySize is the length in bytes of every derived key.
const KeySize = 32

// keySlots bounds how many keys live in locked memory at once. Keys beyond
// it fall back to ordinary heap memory.
const keySlots = 128

// keyArena holds key material in one buffer that is locked once and never
// unlocked. mlock works on whole pages, so unlocking a single key could
// unlock a neighbour that is still live.
var keyArena struct {
	once   sync.Once
	mu     sync.Mutex
	locked bool
	used   [keySlots]bool
	buf    [keySlots * KeySize]byte
}

// KeysLocked reports whether key material is pinned in RAM. Locking is
// best-effort; a zero RLIMIT_MEMLOCK must not break derivation.
func KeysLocked() bool {
	lockArena()
	return keyArena.locked
}

func lockArena() {
	keyArena.once.Do(func() {
		keyArena.locked = hardening.LockMemory(keyArena.buf[:]) == nil
	})
}

// Key is a 256-bit symmetric key that can be wiped.
type Key struct {
	b    []byte
	slot int
}

func newKey(material []byte) *Key {
	lockArena()

	keyArena.mu.Lock()
	defer keyArena.mu.Unlock()
	for i, used := range keyArena.used {
		if !used {
			keyArena.used[i] = true
			k := &Key{b: keyArena.buf[i*KeySize : (i+1)*KeySize : (i+1)*KeySize], slot: i}
			copy(k.b, material)
			return k
		}
	}
	k := &Key{b: make([]byte, KeySize), slot: -1}
	copy(k.b, material)
	return k
}

// keyFromBytes copies b into a new Key. b must be KeySize bytes long.
func keyFromBytes(b []byte) *Key {
	if len(b) != KeySize {
		panic("crypto: key material must be 32 bytes")
	}
	return newKey(b)
}

// Bytes exposes the key material. The slice aliases the key and is zeroed by Wipe.
func (k *Key) Bytes() []byte {
	return k.b
}

// Wipe zeroes the key and returns its slot to the arena. Safe to call on nil
// and more than once.
func (k *Key) Wipe() {
	if k == nil {
		return
	}
	Zero(k.b)
	if k.slot < 0 {
		return
	}

	keyArena.mu.Lock()
	keyArena.used[k.slot] = false
	keyArena.mu.Unlock()
	k.slot = -1
	k.b = make([]byte, KeySize)
}
