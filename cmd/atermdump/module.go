package main

import (
	"github.com/reusee/aterm/debugs"
	"github.com/reusee/aterm/nets"
	"github.com/reusee/aterm/termconfigs"
	"github.com/reusee/aterm/terms"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Terms   terms.Module
	Configs termconfigs.Module
	Nets    nets.Module
	Debugs  debugs.Module
}
