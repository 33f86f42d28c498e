// Package snmpcodec compiles SMIv2 MIB modules into a symbol Store and
// resolves SNMP instance OIDs against that Store's INDEX declarations.
//
// Call [Load] with one or more [Source] values to compile MIB files,
// merge them into a single [mib.Store], and obtain SNMP instance-index
// codec operations through the [index] package.
package snmpcodec
