package vm

type Key uint8

const (
	Key0 = Key(iota)
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// Keypad is the 16-key input device. It only deals in logical keys; mapping
// physical keys is up to the frontend.
type Keypad interface {
	IsKeyPressed(key Key) bool
	Press(key Key)
	Release(key Key)
}

var _ Keypad = (*Keys)(nil)

// Keys is an in-memory Keypad. Keys above KeyF are ignored and never read as
// pressed.
type Keys struct {
	keypad [KeyCount]bool
}

func NewKeys() *Keys {
	return &Keys{}
}

func (k *Keys) IsKeyPressed(key Key) bool {
	if int(key) >= KeyCount {
		return false
	}
	return k.keypad[key]
}

func (k *Keys) Press(key Key) {
	if int(key) < KeyCount {
		k.keypad[key] = true
	}
}

func (k *Keys) Release(key Key) {
	if int(key) < KeyCount {
		k.keypad[key] = false
	}
}
