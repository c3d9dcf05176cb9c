// Command gosu evaluates Gosu scripts from files, inline code, stdin, an
// interactive prompt or over HTTP.
package main

func main() {
	Execute()
}
