package description

// RewriteAddresses passes every port address literal through fn and stores
// the result. Reflection writes addresses before the final base URI is known;
// callers use this once it is. It returns the number of addresses visited.
func RewriteAddresses(d *Definitions, fn func(location string) string) int {
	n := 0
	for _, s := range d.Services() {
		for _, p := range s.Ports {
			for _, addr := range FindAll[AddressKind](&p.Extensions) {
				addr.SetLocation(fn(addr.Location()))
				n++
			}
		}
	}
	return n
}
