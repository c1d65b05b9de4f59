package main

import (
	"go.uber.org/fx"

	"github.com/MajjiR/zingoStats/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
