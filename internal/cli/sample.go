package cli

// sampleDocument is the built-in JSON document used when print runs
// without a file argument. It exercises shared references: both
// projects point at the same team object.
const sampleDocument = `{
  "team": {
    "$id": "core",
    "name": "core platform",
    "lead": "ada"
  },
  "projects": [
    {"name": "compiler", "owner": {"$ref": "core"}},
    {"name": "runtime", "owner": {"$ref": "core"}}
  ]
}
`
