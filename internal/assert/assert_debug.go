//go:build taskmux_debug

package assert

func init() {
	Debug = true
}
