// The main package for the blog-summarizer executable.
package main

import (
	"github.com/JakeFAU/blog-summarizer/cmd"
)

func main() {
	cmd.Execute()
}
