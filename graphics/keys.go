package graphics

// KeyCallbacks stores functions to be called on key presses.
type KeyCallbacks map[Key]func()

func (kc KeyCallbacks) Register(key Key, f func()) {
	if f == nil {
		delete(kc, key)
		return
	}
	kc[key] = f
}

// Dispatch runs the callback registered for key and reports whether one existed.
func (kc KeyCallbacks) Dispatch(key Key) bool {
	if callback, ok := kc[key]; ok {
		callback()
		return true
	}
	return false
}
