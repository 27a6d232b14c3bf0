// Command gotreedemo builds the eleven-node example tree used throughout
// this module's documentation and prints a few traversals over it, as a
// smoke check you can run by eye.
package main

import (
	"flag"
	"fmt"
	"iter"
	"os"

	"github.com/flier/gotree/pkg/tree"
	"github.com/flier/gotree/pkg/tree/linear"
	"github.com/flier/gotree/pkg/tree/walk"
)

func buildDemoTree() *tree.Tree[int] {
	t := tree.New[int]()

	root, err := t.Insert(1)
	if err != nil {
		panic(err)
	}

	n1, _ := t.NodeMut(root)
	n2, _ := n1.PushChild(2)
	n3, _ := n1.PushChild(3)

	node2, _ := t.NodeMut(n2)
	n4, _ := node2.PushChild(4)
	node2.PushChild(5) //nolint:errcheck

	node4, _ := t.NodeMut(n4)
	node4.PushChild(8) //nolint:errcheck

	node3, _ := t.NodeMut(n3)
	n6, _ := node3.PushChild(6)
	n7, _ := node3.PushChild(7)

	node6, _ := t.NodeMut(n6)
	node6.PushChild(9) //nolint:errcheck

	node7, _ := t.NodeMut(n7)
	node7.PushChild(10) //nolint:errcheck
	node7.PushChild(11) //nolint:errcheck

	return t
}

func printValues[T any](label string, seq iter.Seq[tree.View[T]]) {
	fmt.Printf("%s:", label)

	for n := range seq {
		fmt.Printf(" %v", *n.Data())
	}

	fmt.Println()
}

func main() {
	yamlOut := flag.Bool("yaml", false, "also print the linearized export as YAML")
	flag.Parse()

	t := buildDemoTree()

	bfs, _ := t.Walk(walk.BFS)
	printValues("BFS", bfs)

	root, _ := t.Root()

	node3 := findValue(root, 3)
	if node3.IsNil() {
		fmt.Fprintln(os.Stderr, "node with value 3 not found")
		os.Exit(1)
	}

	v3, _ := t.Node(node3)
	printValues("DFS from 3", v3.Walk(walk.DFSPre))
	printValues("PostOrder from 3", v3.Walk(walk.PostOrder))
	printValues("Leaves", root.Leaves(walk.DFSPre))

	fmt.Print("Paths from 3 (BFS):")
	for path := range v3.Paths(walk.BFS) {
		fmt.Print(" [")
		for i, n := range path {
			if i > 0 {
				fmt.Print(",")
			}
			fmt.Print(*n.Data())
		}
		fmt.Print("]")
	}
	fmt.Println()

	if *yamlOut {
		entries := linear.Export(t)
		data, err := linear.MarshalSequenceYAML(entries)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(string(data))
	}
}

func findValue(v tree.View[int], want int) tree.NodeIdx {
	for n := range v.Walk(walk.BFS) {
		if *n.Data() == want {
			return n.Idx()
		}
	}

	return tree.NilNodeIdx
}
