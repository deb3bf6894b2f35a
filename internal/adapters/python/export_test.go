package python

// DriverScript exposes the embedded backend driver for tests.
func DriverScript() []byte {
	return driverScript
}
