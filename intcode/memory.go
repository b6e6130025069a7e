package intcode

// Memory is a word addressed store. Every non-negative address is readable,
// and addresses never written read as zero.
type Memory[W Word] interface {
	// Read returns the word at addr.
	Read(addr int) W
	// Write stores value at addr, growing the store as needed.
	Write(addr int, value W)
	// Len returns the high-water mark of the store.
	Len() int
	// Load replaces the entire contents with a copy of image.
	Load(image []W)
	// Dump returns a copy of the contents up to the high-water mark.
	Dump() []W
}

// Ram is a growable, zero filled memory.
type Ram[W Word] struct {
	Data []W
}

var _ Memory[int64] = (*Ram[int64])(nil)

// NewRam creates a memory holding a copy of image.
func NewRam[W Word](image []W) (ram *Ram[W]) {
	ram = &Ram[W]{}
	ram.Load(image)
	return
}

func (ram *Ram[W]) Read(addr int) W {
	if addr < 0 {
		panic(ErrAddress(addr))
	}

	if addr >= len(ram.Data) {
		return 0
	}

	return ram.Data[addr]
}

func (ram *Ram[W]) Write(addr int, value W) {
	if addr < 0 {
		panic(ErrAddress(addr))
	}

	if addr >= len(ram.Data) {
		// Zero fill, even when the capacity is already there.
		ram.Data = append(ram.Data, make([]W, addr+1-len(ram.Data))...)
	}

	ram.Data[addr] = value
}

func (ram *Ram[W]) Len() int {
	return len(ram.Data)
}

func (ram *Ram[W]) Load(image []W) {
	ram.Data = append(ram.Data[:0], image...)
}

func (ram *Ram[W]) Dump() []W {
	return append([]W(nil), ram.Data...)
}
