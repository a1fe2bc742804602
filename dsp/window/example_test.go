package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4, WithPeriodic())
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.50 1.00 0.50
}

func ExampleParseType() {
	t, err := ParseType("blackman-harris")
	if err != nil {
		fmt.Println(err)
		return
	}
	m := Info(t)
	fmt.Printf("%s %.1f dB\n", m.Name, m.HighestSidelobe)
	// Output:
	// Blackman-Harris -92.0 dB
}

func ExampleEquivalentNoiseBandwidth() {
	enbw, err := EquivalentNoiseBandwidth(Generate(TypeHann, 1024, WithPeriodic()))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.2f bins\n", enbw)
	// Output:
	// 1.50 bins
}
