package normalise

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html/charset"
)

var (
	truckVehicleFields = []string{"vehicle_no", "vehicle_number", "vehicleno", "vehicle"}
	truckLatFields     = []string{"lat", "latitude"}
	truckLngFields     = []string{"lng", "lon", "long", "longitude"}
	truckSpeedFields   = []string{"speed"}
	truckStatusFields  = []string{"status", "vehicle_status"}
	truckWardFields    = []string{"ward", "ward_name", "zone"}
	truckUpdatedFields = []string{"last_updated", "updated_at", "timestamp", "datetime"}

	xmlRowElements = []string{"row", "record", "item"}
)

const defaultTruckStatus = "Active"

func truckFromRecord(record Record) ctdf.Truck {
	status := record.String(truckStatusFields...)
	if status == "" {
		status = defaultTruckStatus
	}

	return ctdf.Truck{
		VehicleNumber: record.Identifier(truckVehicleFields...),
		Lat:           record.Float(truckLatFields...),
		Lng:           record.Float(truckLngFields...),
		Speed:         record.Float(truckSpeedFields...),
		Status:        status,
		Ward:          record.String(truckWardFields...),
		LastUpdated:   record.String(truckUpdatedFields...),
	}
}

// TrucksJSON normalises open-data telemetry. Rows may be the top level value or nested under
// "records" or "data".
func TrucksJSON(raw any) []ctdf.Truck {
	records := Records(Unwrap(raw, "records", "data"))
	trucks := make([]ctdf.Truck, 0, len(records))

	for _, record := range records {
		trucks = append(trucks, truckFromRecord(record))
	}

	return trucks
}

// TrucksXML reads every row/record/item element of the document. Fields are taken from the
// element's attributes and from its direct children, with children winning. One row gives a
// one-element list.
func TrucksXML(body []byte) ([]ctdf.Truck, error) {
	rows, err := decodeXMLRows(body)
	if err != nil {
		return nil, err
	}

	trucks := make([]ctdf.Truck, 0, len(rows))
	for _, row := range rows {
		trucks = append(trucks, truckFromRecord(row))
	}

	return trucks, nil
}

func decodeXMLRows(body []byte) ([]Record, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel

	rows := []Record{}
	sawElement := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		startElement, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true

		if !slices.Contains(xmlRowElements, strings.ToLower(startElement.Name.Local)) {
			continue
		}

		row, err := decodeXMLRow(decoder, startElement)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if !sawElement {
		return nil, errors.New("document has no elements")
	}

	return rows, nil
}

func decodeXMLRow(decoder *xml.Decoder, rowElement xml.StartElement) (Record, error) {
	row := Record{}

	for _, attr := range rowElement.Attr {
		row[strings.ToLower(attr.Name.Local)] = attr.Value
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch element := token.(type) {
		case xml.StartElement:
			var value string
			if err := decoder.DecodeElement(&value, &element); err != nil {
				return nil, err
			}
			row[strings.ToLower(element.Name.Local)] = value
		case xml.EndElement:
			if element.Name.Local == rowElement.Name.Local {
				return row, nil
			}
		}
	}
}
