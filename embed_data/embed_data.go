package embed_data

import _ "embed"

// ProviderScaffolding is the boilerplate markup prepended to the first
// template file of every project. It must stay byte-for-byte stable: the
// cache fingerprint covers user input only, so changing this block requires
// a schema bump in the backend image.
//
//go:embed provider_scaffolding.tpl
var ProviderScaffolding []byte

// StdlibNamespaces is the manifest of library namespaces the base
// environment is built from.
//
//go:embed stdlib_namespaces.json
var StdlibNamespaces []byte

// JsExportQuery holds the tree-sitter queries used to extract exported
// symbols from generated JavaScript fragments.
//
//go:embed js_export_query.json
var JsExportQuery []byte
