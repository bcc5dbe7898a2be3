// Package walks plots random-walk logs.
//
// A walk log holds one walk per line as whitespace-separated integers:
//
//	0 3 3 7 2
//	1 1 4 0 0
//
// [ReadLog] parses the rows, [Select] picks one by zero-based index and the
// renderers draw it as a stem plot of value against position:
//
//	rows, err := walks.LoadLog("dist.log")
//	w, err := walks.Select(rows, 3)
//	svg := walks.RenderSVG(w, walks.WithTitle("step 3"))
//	fmt.Print(walks.RenderText(w))
//
// The package shares nothing with the graph explorer beyond the error codes.
package walks
