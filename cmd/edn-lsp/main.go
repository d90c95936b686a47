// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"edn/internal/lsp"
)

const lsName = "edn-lsp" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	verbosity := flag.Int("v", 1, "log verbosity: 0 notice, 1 info, 2 debug")
	logPath := flag.String("log", "", "log file (default stderr)")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr or a file
	if *logPath != "" {
		commonlog.Configure(*verbosity, logPath)
	} else {
		commonlog.Configure(*verbosity, nil)
	}
	log := commonlog.GetLogger("edn.lsp.main")

	ednHandler := lsp.NewEDNHandler()

	handler = protocol.Handler{
		Initialize:                     ednHandler.Initialize,
		Initialized:                    ednHandler.Initialized,
		Shutdown:                       ednHandler.Shutdown,
		SetTrace:                       ednHandler.SetTrace,
		TextDocumentDidOpen:            ednHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           ednHandler.TextDocumentDidClose,
		TextDocumentDidChange:          ednHandler.TextDocumentDidChange,
		TextDocumentCompletion:         ednHandler.TextDocumentCompletion,
		TextDocumentFormatting:         ednHandler.TextDocumentFormatting,
		TextDocumentSemanticTokensFull: ednHandler.TextDocumentSemanticTokensFull,
	}

	// debug=false keeps glsp from logging every message body
	s := server.NewServer(&handler, lsName, false)

	log.Infof("Starting EDN LSP server %s...", version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("Error running EDN LSP server: %s", err)
		os.Exit(1)
	}
}
