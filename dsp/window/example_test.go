package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleParseSpec() {
	spec, err := ParseSpec("kaiser:6")
	if err != nil {
		fmt.Println(err)
		return
	}
	w, _ := spec.Coefficients(4)
	fmt.Printf("%s %d %.3f\n", spec, len(w), w[2])
	// Output:
	// kaiser:6 4 1.000
}
