package viewrt

// Animator is a host animation controller addressed by parameter name.
// Generated parameter tables wrap it with typed accessors.
type Animator interface {
	Float(name string) float32
	SetFloat(name string, v float32)
	SetFloatDamped(name string, v, dampTime, deltaTime float32)
	Integer(name string) int32
	SetInteger(name string, v int32)
	Bool(name string) bool
	SetBool(name string, v bool)
	SetTrigger(name string)
	ResetTrigger(name string)
}
