package num

// MaxLimbs caps the size of any Nat built from untrusted input (hex text,
// byte slices) or from a left shift. 1<<24 limbs is 512 Mbit.
const MaxLimbs = 1 << 24

var zeroLimbs = []uint32{0}

func natZero() Nat { return Nat{limbs: []uint32{0}} }
func natOne() Nat  { return Nat{limbs: []uint32{1}} }
func natTwo() Nat  { return Nat{limbs: []uint32{2}} }
