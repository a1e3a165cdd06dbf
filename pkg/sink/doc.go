// Package sink renders class diagram documents.
//
// # Formats
//
//   - XML: the class diagram interchange format, see [WriteXML]
//   - JSON: the same document as indented JSON, see [WriteJSON]
//   - DOT: Graphviz source with one record node per type, see [ToDOT]
//   - SVG: the DOT graph laid out by Graphviz, see [RenderSVG]
//
// XML and JSON output can be read back with [ReadXML] and [ReadJSON].
//
// # XML Layout
//
//	<?xml version="1.0" encoding="utf-8" standalone="yes"?>
//	<ClassDiagram>
//	  <AssemblyInfo Name="AnimalLibrary" Version="1.0.0.0" Generated="2024-03-09 14:05:07"></AssemblyInfo>
//	  <Types>
//	    <AbstractClass Name="Animal" FullName="AnimalLibrary.Animal">
//	      <Comment>...</Comment>
//	      <Properties>
//	        <Property Name="Name" Type="String" Access="public get; public set;"></Property>
//	      </Properties>
//	      <Methods>
//	        <Method Name="SayHello" ReturnType="void" IsAbstract="true" IsVirtual="true"></Method>
//	      </Methods>
//	    </AbstractClass>
//	    <Enum Name="eFavoriteFood" FullName="AnimalLibrary.eFavoriteFood">
//	      <Values>
//	        <Value Name="Grass" Value="0"></Value>
//	      </Values>
//	    </Enum>
//	  </Types>
//	</ClassDiagram>
//
// Each type element is named after its [diagram.Kind]. Comment, BaseType,
// Values, Properties, Methods and Parameters are written only when they
// have content. Booleans are written as true and false.
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which runs Graphviz in
// process without a system installation.
package sink
