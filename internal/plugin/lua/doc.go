// Package lua runs user scripts that customise how lines are compared.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table, string
// and math libraries are opened, file loading functions are removed and
// require only resolves those libraries.
//
// # Normalizer
//
// A normalizer script defines a global function normalize(line) returning
// the string used when hashing the line for the diff:
//
//	function normalize(line)
//	    return (line:gsub("%s+$", ""))
//	end
//
// Load it and pass the function to the tracker:
//
//	n, err := lua.LoadNormalizer("trim.lua")
//	if err != nil {
//	    return err
//	}
//	defer n.Close()
//
//	tracker := tracking.NewTracker(providers, tracking.WithNormalizer(n.Normalize))
//
// Calls are serialized, and a call that fails or times out leaves the line
// unchanged.
package lua
