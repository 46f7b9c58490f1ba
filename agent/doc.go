// Copyright 2024 AgentCore Authors. All rights reserved.
// Use of this source code is governed by a MIT license that can be
// found in the LICENSE file.

/*
Package agent provides the ReAct orchestrator for AgentCore.

# Overview

ReActAgent turns a task string into a structured AgentResponse: the final
result plus the reasoning trace (thought, action, observation steps) the
provider produced. Reasoning itself is delegated to an llm.Provider; the
orchestrator only builds the request and returns the outcome.

	provider := openai.NewOpenAIProvider(providers.Config{APIKey: key})
	store := rag.NewInMemoryVectorStore()
	a := agent.New(provider, store)

	resp, err := a.Execute(ctx, "Hello")

# Error Handling

Execute returns exactly one of a response or an error. Provider errors
(api_error, network_error, parse_error) are returned as-is, the same
pointer, without wrapping or translation. The orchestrator does not
retry and does not log; wrap the provider with llm/middleware for that.

# Retrieval Augmentation

Disabled by default. With WithRetrieval(k, budget), Execute first searches
the store for k documents and prepends them to the task as a context block
bounded by a token budget:

	Context:
	- first document
	- second document

	Task: original task

A store error is returned as-is and the provider is not called.

# Concurrency

A single ReActAgent is safe for concurrent Execute calls. Each call makes
exactly one Chat call. There is no orchestrator-level timeout; use ctx.
*/
package agent
