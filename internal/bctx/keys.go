package bctx

type ctxKey string
