package db

var RunTx = runTx
