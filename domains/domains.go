// Package domains wires the command domains of the reference bot.
// Importing it registers every domain's commands with commands.DefaultTable.
package domains

import (
	_ "github.com/a04k/discordkit/domains/finance"
	_ "github.com/a04k/discordkit/domains/general"
)

// Names lists the domains to load, in load order.
var Names = []string{"general", "finance"}
