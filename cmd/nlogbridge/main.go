// Command nlogbridge inspects threshold settings and serves the bridge's
// runtime configuration surface.
package main

func main() {
	Execute()
}
