package cosmos

import (
	"encoding/json"
	"strconv"
)

const (
	msgSendType            = "cosmos-sdk/MsgSend"
	pubKeyTypeSecp256k1    = "tendermint/PubKeySecp256k1"
	pubKeyTypeEthSecp256k1 = "ethermint/PubKeyEthSecp256k1"
	broadcastModeBlock     = "block"
)

// Field order is the sorted key order of the amino JSON encoding.

type jsonSignDoc struct {
	AccountNumber string    `json:"account_number"`
	ChainID       string    `json:"chain_id"`
	Fee           jsonFee   `json:"fee"`
	Memo          string    `json:"memo"`
	Msgs          []jsonMsg `json:"msgs"`
	Sequence      string    `json:"sequence"`
}

type jsonFee struct {
	Amount []jsonCoin `json:"amount"`
	Gas    string     `json:"gas"`
}

type jsonCoin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type jsonMsg struct {
	Type  string      `json:"type"`
	Value jsonMsgSend `json:"value"`
}

type jsonMsgSend struct {
	Amount      []jsonCoin `json:"amount"`
	FromAddress string     `json:"from_address"`
	ToAddress   string     `json:"to_address"`
}

type jsonBroadcast struct {
	Mode string `json:"mode"`
	Tx   jsonTx `json:"tx"`
}

type jsonTx struct {
	Fee        jsonFee         `json:"fee"`
	Memo       string          `json:"memo"`
	Msg        []jsonMsg       `json:"msg"`
	Signatures []jsonSignature `json:"signatures"`
}

type jsonSignature struct {
	PubKey    jsonPubKey `json:"pub_key"`
	Signature []byte     `json:"signature"`
}

type jsonPubKey struct {
	Type  string `json:"type"`
	Value []byte `json:"value"`
}

func toJSONCoins(amounts []Amount) []jsonCoin {
	coins := make([]jsonCoin, 0, len(amounts))
	for _, a := range amounts {
		coins = append(coins, jsonCoin{Amount: a.Amount, Denom: a.Denom})
	}
	return coins
}

func toJSONFee(fee *Fee) jsonFee {
	return jsonFee{
		Amount: toJSONCoins(fee.Amounts),
		Gas:    strconv.FormatUint(fee.Gas, 10),
	}
}

func toJSONMsgs(msgs []SendMessage) []jsonMsg {
	out := make([]jsonMsg, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, jsonMsg{
			Type: msgSendType,
			Value: jsonMsgSend{
				Amount:      toJSONCoins(m.Amounts),
				FromAddress: m.FromAddress,
				ToAddress:   m.ToAddress,
			},
		})
	}
	return out
}

func signDocBytes(in SigningInput) ([]byte, error) {
	return json.Marshal(jsonSignDoc{
		AccountNumber: strconv.FormatUint(in.AccountNumber, 10),
		ChainID:       in.ChainID,
		Fee:           toJSONFee(in.Fee),
		Memo:          in.Memo,
		Msgs:          toJSONMsgs(in.Messages),
		Sequence:      strconv.FormatUint(in.Sequence, 10),
	})
}
