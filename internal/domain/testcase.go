package domain

// TestCase represents a test case for code execution. Its position in the
// submitted slice is the index reported by the driver.
type TestCase struct {
	Input          Value `json:"input" yaml:"input"`
	ExpectedOutput Value `json:"expectedOutput" yaml:"expectedOutput"`
	Hidden         bool  `json:"hidden" yaml:"hidden"`
}
