// Package domain contains the values exchanged between the fetch pipeline
// stages. They carry no infrastructure concerns so every package can share them.
package domain
