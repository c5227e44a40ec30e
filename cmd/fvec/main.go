// Command fvec runs buffer operations on integer lists under an optional
// memory budget, reporting allocation failures instead of crashing.
package main

func main() {
	execute()
}
