package cat_test

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
)

// ExampleNewBuilder assembles the walking arrow a→b and certifies its
// laws and its terminal object.
func ExampleNewBuilder() {
	b := cat.NewBuilder[string, string]()
	_ = b.AddObject("a", "id:a")
	_ = b.AddObject("b", "id:b")
	_ = b.AddArrow("f", "a", "b")
	fin, err := b.Build()
	if err != nil {
		fmt.Println("build:", err)
		return
	}

	laws, _ := cat.CheckLaws[string, string](fin)
	fmt.Println("lawful:", laws.Holds)

	top, ok, _ := cat.FindTerminal[string, string](fin)
	fmt.Println("terminal:", top, ok)

	// Output:
	// lawful: true
	// terminal: b true
}

// ExampleHom enumerates a hom-set of a composition-closed chain.
func ExampleHom() {
	b := cat.NewBuilder[string, string]()
	_ = b.AddObject("0", "id:0")
	_ = b.AddObject("1", "id:1")
	_ = b.AddObject("2", "id:2")
	_ = b.AddArrow("f", "0", "1")
	_ = b.AddArrow("g", "1", "2")
	_ = b.AddArrow("gf", "0", "2")
	_ = b.SetComposite("g", "f", "gf")
	fin, _ := b.Build()

	fmt.Println(cat.Hom[string, string](fin, "0", "2"))
	fmt.Println(cat.Hom[string, string](fin, "2", "0"))

	// Output:
	// [gf]
	// []
}
