package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the order snapshot suite. Every tool takes an
// optional workspace; group-scoped tools take a group token that may be an
// ID, a name, or a mention form like <#123>.

var captureToolDef = mcp.NewTool("order_capture",
	mcp.WithDescription("Capture the current ordering of items in a group "+
		"(or all groups when no group is given) into the snapshot store. "+
		"Capturing all groups first clears every stored record."),
	mcp.WithString("workspace",
		mcp.Description("Workspace to capture in; defaults to the configured workspace."),
	),
	mcp.WithString("group",
		mcp.Description("Group ID, name, or mention. Empty captures every group."),
	),
)

var rollbackToolDef = mcp.NewTool("order_rollback",
	mcp.WithDescription("Issue move requests restoring items to their stored "+
		"positions. Items that no longer exist, or that the actor may not "+
		"manage, are skipped and reported; the rollback itself always completes."),
	mcp.WithString("workspace",
		mcp.Description("Workspace to roll back in; defaults to the configured workspace."),
	),
	mcp.WithString("group",
		mcp.Description("Group ID, name, or mention. Empty rolls back every stored group."),
	),
)

var showToolDef = mcp.NewTool("order_show",
	mcp.WithDescription("Show the stored snapshot for one group, including "+
		"items that are no longer live."),
	mcp.WithString("workspace",
		mcp.Description("Workspace to read from; defaults to the configured workspace."),
	),
	mcp.WithString("group",
		mcp.Description("Group ID, name, or mention."),
		mcp.Required(),
	),
)

var listToolDef = mcp.NewTool("order_list",
	mcp.WithDescription("List every group with a stored snapshot and the "+
		"item kinds recorded for it."),
	mcp.WithString("workspace",
		mcp.Description("Workspace to read from; defaults to the configured workspace."),
	),
)

var clearToolDef = mcp.NewTool("order_clear",
	mcp.WithDescription("Remove stored snapshots for one group, or all "+
		"snapshots in the workspace when no group is given."),
	mcp.WithString("workspace",
		mcp.Description("Workspace to clear in; defaults to the configured workspace."),
	),
	mcp.WithString("group",
		mcp.Description("Group ID, name, or mention. Empty clears everything."),
	),
)
