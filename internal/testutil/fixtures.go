package testutil

// OrdersUnit declares two valid handlers, one rejected handler and a helper.
const OrdersUnit = `
unit "example/orders" {
  version = "0.1.0"
}

import "ballerinax/awslambda" {}

function "createOrder" {
  public      = true
  annotations = [awslambda.Function]
  returns     = union(json, error)

  param "ctx" { type = awslambda.Context }
  param "input" { type = json }
}

function "cancelOrder" {
  annotations = [awslambda.Function]
  returns     = union(error, json)

  param "ctx" { type = awslambda.Context }
  param "input" { type = json }
}

function "badOrder" {
  annotations = [awslambda.Function]
  returns     = json

  param "input" { type = json }
}

function "helper" {
  returns = string
}
`

// PlainUnit declares no handlers.
const PlainUnit = `
unit "example/plain" {
  version = "0.1.0"
}

function "add" {
  param "a" { type = int }
  param "b" { type = int }
  returns = int
}
`

// BrokenUnit fails to parse.
const BrokenUnit = `
unit "example/broken" {
  version = "0.1.0"
`
